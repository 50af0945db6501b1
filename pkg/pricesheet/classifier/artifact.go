package classifier

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// ArtifactFormat is the on-disk layout version written by SaveArtifact.
const ArtifactFormat = 1

// ErrArtifactCorrupt indicates the artifact could not be decoded.
var ErrArtifactCorrupt = errors.New("classifier artifact corrupt")

// Artifact is the persisted classifier state: the training set it was
// fitted on and the fitted model.
type Artifact struct {
	Format    int
	Version   int
	TrainedAt time.Time
	Samples   []models.Sample
	Model     *Model
}

// LoadArtifact reads an artifact from path. A missing file returns an error
// satisfying errors.Is(err, os.ErrNotExist).
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, path, err)
	}
	if a.Format != ArtifactFormat {
		return nil, fmt.Errorf("%w: %s: unsupported format %d", ErrArtifactCorrupt, path, a.Format)
	}
	if err := a.Model.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, path, err)
	}
	return &a, nil
}

// SaveArtifact writes a to path, replacing any previous artifact atomically.
func SaveArtifact(path string, a *Artifact) error {
	a.Format = ArtifactFormat

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(a); err != nil {
		tmp.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}
