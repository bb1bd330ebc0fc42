package domain

// Board describes a board reported by `arduino-cli board list`.
type Board struct {
	Port string `json:"port"`
	Name string `json:"name,omitzero"`
	FQBN string `json:"fqbn,omitzero"`
}

// Project is a discovered sketch directory inside the workspace.
type Project struct {
	// SketchPath is the absolute path of the .ino file.
	SketchPath string
	// Dir is the directory containing the sketch.
	Dir string
	// Name is the sketch directory's base name, which by Arduino convention
	// matches the .ino file name.
	Name string
}
