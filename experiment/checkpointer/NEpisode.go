package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/godqn/timestep"
)

// nEpisode implements checkpointing every N finished episodes
type nEpisode struct {
	interval int
	episodes int
	object   Saver

	// filename returns the filename of the file to save the object in.
	//
	// If each checkpoint should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g. file1.gob,
	// file2.gob, ..., fileK.gob), then use FilenameEnumerator to
	// generate the naming function.
	filename func() string
}

// NewNEpisode returns a Checkpointer that saves object every n
// finished episodes
func NewNEpisode(n int, object Saver,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNEpisode: n must be >= 1")
	}
	if object == nil || filename == nil {
		return nil, fmt.Errorf("newNEpisode: object and filename must " +
			"be non-nil")
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint counts the episodes ended by t and saves the tracked
// object when the count reaches a multiple of the interval
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}

	n.episodes++
	if n.episodes%n.interval == 0 {
		if err := n.object.Save(n.filename()); err != nil {
			return fmt.Errorf("checkpoint: %v", err)
		}
	}
	return nil
}
