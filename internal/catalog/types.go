package catalog

// ModelDef is one model to process.
type ModelDef struct {
	Group string
	Name  string
	File  string // model path relative to the model directory, e.g. "props/crate.obj"
}
