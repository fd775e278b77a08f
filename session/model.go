package session

// Record is the persisted shape of an authenticated identity. It carries
// display data only — never the credential digest — because anything stored
// here is readable by every script in the storage scope.
type Record struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
