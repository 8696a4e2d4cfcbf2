package models

// Informational results returned when a filter matches nothing. They are
// normal results, not errors.
const (
	MsgUserNotFound    = "No such user found!"
	MsgCountryNotFound = "No users of such country!"
)

// Result is the outcome of a query: EntryList, SingleEntry, Count or Message.
type Result interface {
	isResult()
}

// EntryList is the default dump.
type EntryList []Entry

// SingleEntry is a user id match.
type SingleEntry struct {
	Entry Entry
}

// Count is the number of entries matching a country.
type Count int

// Message is an informational string such as MsgUserNotFound.
type Message string

func (EntryList) isResult()   {}
func (SingleEntry) isResult() {}
func (Count) isResult()       {}
func (Message) isResult()     {}
