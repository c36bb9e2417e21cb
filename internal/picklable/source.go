package picklable

// Source is what a reconstruction reads from: a Path or Bytes.
type Source interface {
	isSource()
}

// Path is a filesystem path to a file written by the native save routine.
type Path string

// Bytes is a serialized representation produced by Capture.
type Bytes []byte

func (Path) isSource()  {}
func (Bytes) isSource() {}
