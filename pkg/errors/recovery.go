package errors

import (
	"fmt"
	"os"
	"time"
)

// RecoveryStrategy defines how to recover from an error
type RecoveryStrategy interface {
	CanRecover(err *Error) bool
	Attempt(err *Error) error
	Description() string
}

// Recoverer attempts to recover from errors
type Recoverer struct {
	strategies []RecoveryStrategy
	verbose    bool
}

// NewRecoverer creates a new error recoverer
func NewRecoverer(verbose bool) *Recoverer {
	return &Recoverer{
		strategies: []RecoveryStrategy{
			&StoreResetStrategy{},
		},
		verbose: verbose,
	}
}

// Recover attempts to recover from an error
func (r *Recoverer) Recover(err *Error) error {
	if !err.Recoverable {
		return err
	}
	for _, strategy := range r.strategies {
		if strategy.CanRecover(err) {
			if r.verbose {
				fmt.Printf("🔧 Attempting recovery: %s\n", strategy.Description())
			}
			if recErr := strategy.Attempt(err); recErr == nil {
				fmt.Println("✅ Recovery successful! Run the command again.")
				return nil
			} else if r.verbose {
				fmt.Printf("⚠️  Recovery failed: %v\n", recErr)
			}
		}
	}
	return err
}

// StoreResetStrategy moves an unreadable settings file aside so the next
// run starts from defaults. The file path travels in the "path" context key.
type StoreResetStrategy struct {
	now func() time.Time
}

func (s *StoreResetStrategy) CanRecover(err *Error) bool {
	return err.Code == ErrStoreCorrupted && err.Context["path"] != ""
}

func (s *StoreResetStrategy) Attempt(err *Error) error {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	path := err.Context["path"]
	backup := fmt.Sprintf("%s.corrupt-%s", path, now().Format("20060102-150405"))
	fmt.Printf("🧹 Moving unreadable settings to %s\n", backup)
	if mvErr := os.Rename(path, backup); mvErr != nil {
		return fmt.Errorf("failed to move settings aside: %w", mvErr)
	}
	return nil
}

func (s *StoreResetStrategy) Description() string { return "Resetting unreadable settings file" }
