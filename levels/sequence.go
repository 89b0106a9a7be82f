package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sequence is the ordered list of level names the game plays through.
type Sequence struct {
	Levels []string `yaml:"levels"`
}

func LoadSequence() (*Sequence, error) {
	const name = "sequence.yaml"
	data, err := os.ReadFile(filepath.Join(Dir, name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read level sequence: %w", err)
	}
	return ParseSequence(data)
}

func ParseSequence(data []byte) (*Sequence, error) {
	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("unmarshal level sequence: %w", err)
	}
	if len(seq.Levels) == 0 {
		return nil, fmt.Errorf("level sequence is empty")
	}
	return &seq, nil
}

func (s *Sequence) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Levels)
}

// Name returns the level at index i.
func (s *Sequence) Name(i int) (string, bool) {
	if s == nil || i < 0 || i >= len(s.Levels) {
		return "", false
	}
	return s.Levels[i], true
}

// Index returns the position of name, or -1.
func (s *Sequence) Index(name string) int {
	if s == nil {
		return -1
	}
	for i, n := range s.Levels {
		if n == name || withExt(n) == withExt(name) {
			return i
		}
	}
	return -1
}
