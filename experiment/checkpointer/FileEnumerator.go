package checkpointer

import "fmt"

// fileEnumerator enumerates filenames
type fileEnumerator struct {
	i         int
	prefix    string
	extension string
}

// next returns the name of the next consecutive enumerated file
func (f *fileEnumerator) next() string {
	f.i++
	return fmt.Sprintf("%v%v%v", f.prefix, f.i, f.extension)
}

// FilenameEnumerator returns a function which returns filenames with
// an integer counter suffix. The first call returns the counter start+1
// and each following call increments it. The prefix parameter is the
// filename with its path and extension includes the leading dot.
func FilenameEnumerator(start int, prefix, extension string) func() string {
	enum := fileEnumerator{i: start, prefix: prefix, extension: extension}
	return enum.next
}
