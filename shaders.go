package glf

// DefaultVertexSource is a vertex stage matching QuadLayout: it passes color
// and uv through and transforms position by the Projection uniform.
const DefaultVertexSource = `#version 330 core
layout(location = 0) in vec4 Position;
layout(location = 1) in vec4 Color;
layout(location = 2) in vec2 UV;

uniform mat4 Projection;

out vec4 vColor;
out vec2 vUV;

void main() {
	vColor = Color;
	vUV = UV;
	gl_Position = Projection * Position;
}
`

// DefaultFragmentSource samples texture unit 0 and multiplies by the vertex color.
const DefaultFragmentSource = `#version 330 core
in vec4 vColor;
in vec2 vUV;

uniform sampler2D Diffuse;

out vec4 FragColor;

void main() {
	FragColor = texture(Diffuse, vUV) * vColor;
}
`
