package app

import "sync"

const (
	OpAdd      = "add"
	OpDelete   = "delete"
	OpCheck    = "check"
	OpCheckAll = "check-all"
	OpHistory  = "history"
	OpExport   = "export"
	OpReload   = "reload"
)

// Flight allows one user-triggered operation at a time. Controls stay
// disabled from Begin until End.
type Flight struct {
	mu     sync.Mutex
	op     string
	itemID int
}

// Begin claims the slot for op. itemID is 0 for operations that are not
// about a single item. It returns false if something is already running.
func (f *Flight) Begin(op string, itemID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.op != "" {
		return false
	}
	f.op, f.itemID = op, itemID
	return true
}

func (f *Flight) End() {
	f.mu.Lock()
	f.op, f.itemID = "", 0
	f.mu.Unlock()
}

// Current returns the running operation, "" when idle.
func (f *Flight) Current() (op string, itemID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.op, f.itemID
}

func (f *Flight) Busy() bool {
	op, _ := f.Current()
	return op != ""
}
