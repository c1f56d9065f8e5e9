package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	"github.com/msto63/ember/foundation/lang"
	mdwast "github.com/msto63/ember/foundation/lang/ast"
)

// Entry records the outcome of parsing one source
type Entry struct {
	ID        string        `json:"id" yaml:"id"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	RunID     string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Source    string        `json:"source" yaml:"source"`
	Hash      string        `json:"sha256" yaml:"sha256"`
	Size      int           `json:"size" yaml:"size"`
	Success   bool          `json:"success" yaml:"success"`
	Code      string        `json:"code,omitempty" yaml:"code,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	Line      int           `json:"line,omitempty" yaml:"line,omitempty"`
	Column    int           `json:"column,omitempty" yaml:"column,omitempty"`
	Nodes     int           `json:"nodes" yaml:"nodes"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Observe builds an entry for a finished parse of content under name.
// root is ignored when err is set.
func Observe(name, content string, root *mdwast.Compound, err error, duration time.Duration) *Entry {
	sum := sha256.Sum256([]byte(content))
	entry := &Entry{
		Source:   name,
		Hash:     hex.EncodeToString(sum[:]),
		Size:     len(content),
		Success:  err == nil,
		Duration: duration,
	}

	if err != nil {
		d := lang.Diagnose(err, content)
		entry.Code = string(mdwerror.GetCode(err))
		entry.Error = d.Message
		entry.Line = d.Line
		entry.Column = d.Column
		return entry
	}

	if root != nil {
		entry.Nodes = mdwast.Count(root).Total
	}
	return entry
}

// Filter defines criteria for querying entries
type Filter struct {
	Source     string
	Hash       string
	RunID      string
	OnlyFailed bool
	Since      time.Time
	Limit      int
	Offset     int
}

// Stats summarises the journal
type Stats struct {
	Total     int64            `json:"total" yaml:"total"`
	Failed    int64            `json:"failed" yaml:"failed"`
	Sources   int64            `json:"sources" yaml:"sources"`
	ByCode    map[string]int64 `json:"by_code" yaml:"by_code"`
	LastEntry time.Time        `json:"last_entry,omitempty" yaml:"last_entry,omitempty"`
}
