package recommend

import (
	"encoding/gob"
	"fmt"
	"io"
)

// modelFormatVersion is bumped whenever the persisted layout changes. A loaded
// blob with a different version is rejected as incompatible rather than
// misinterpreted.
const modelFormatVersion = 1

// modelMagic guards against feeding arbitrary files to LoadModel.
const modelMagic = "cineswipe-model"

// persistedModel is the gob layout of a fitted hybrid model. Everything needed
// to reproduce bit-for-bit-equivalent query results is here: vectorizer state,
// both matrices, id orderings, and the config the bands and weights came from.
type persistedModel struct {
	Magic   string
	Version int

	Cfg Config

	// Content engine.
	ContentFitted bool
	Terms         []string
	IDF           []float64
	ContentRows   []SparseVector
	MovieIDs      []int64

	// Collaborative engine (optional).
	CollabFitted bool
	CollabRows   []SparseVector
	UserIDs      []int64
	ColumnIDs    []int64
	Popularity   []float64
}

// Save writes the fitted model as an opaque blob. Saving an unfitted model is
// an error: there is nothing meaningful to persist.
func (m *HybridModel) Save(w io.Writer) error {
	if !m.fitted {
		return fmt.Errorf("Save: cannot persist unfitted model")
	}
	p := persistedModel{
		Magic:   modelMagic,
		Version: modelFormatVersion,
		Cfg:     m.cfg,

		ContentFitted: m.content.fitted,
		Terms:         m.content.vectorizer.terms,
		IDF:           m.content.vectorizer.idf,
		ContentRows:   m.content.rows,
		MovieIDs:      m.content.movies.IDs(),
	}
	if m.collab.fitted {
		p.CollabFitted = true
		p.CollabRows = m.collab.rows
		p.UserIDs = m.collab.users.IDs()
		p.ColumnIDs = m.collab.movies.IDs()
		p.Popularity = m.collab.popularity
	}
	if err := gob.NewEncoder(w).Encode(&p); err != nil {
		return fmt.Errorf("Save: encode: %w", err)
	}
	return nil
}

// LoadModel reads a blob written by Save and reconstructs a fitted model.
// Corrupt data, wrong magic, and version mismatches are all surfaced as errors
// so the caller can tell a bad artifact from a missing one.
func LoadModel(r io.Reader) (*HybridModel, error) {
	var p persistedModel
	if err := gob.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("LoadModel: decode: %w", err)
	}
	if p.Magic != modelMagic {
		return nil, fmt.Errorf("LoadModel: not a recommendation model blob")
	}
	if p.Version != modelFormatVersion {
		return nil, fmt.Errorf("LoadModel: unsupported model format version %d (want %d)", p.Version, modelFormatVersion)
	}
	if err := p.Cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LoadModel: %w", err)
	}

	m := NewHybridModel(p.Cfg)
	if !p.ContentFitted {
		return nil, fmt.Errorf("LoadModel: blob has no fitted content engine")
	}

	m.content.vectorizer.terms = p.Terms
	m.content.vectorizer.columns = make(map[string]int, len(p.Terms))
	for col, term := range p.Terms {
		m.content.vectorizer.columns[term] = col
	}
	m.content.vectorizer.idf = p.IDF
	m.content.vectorizer.fitted = true
	m.content.rows = p.ContentRows
	m.content.movies = NewIDIndex(p.MovieIDs)
	m.content.fitted = true

	if p.CollabFitted {
		m.collab.rows = p.CollabRows
		m.collab.users = NewIDIndex(p.UserIDs)
		m.collab.movies = NewIDIndex(p.ColumnIDs)
		m.collab.popularity = p.Popularity
		m.collab.fitted = true
	}
	m.fitted = true
	return m, nil
}
