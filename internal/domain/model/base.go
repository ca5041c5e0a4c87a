package model

// Base provides the identifier and version fields shared by all records.
// An empty ID marks a record as new; the owning store assigns the identifier
// on first save and it is never reassigned afterwards. The version is
// maintained by the store and backs optimistic conflict detection.
type Base struct {
	ID      string `json:"id"`
	Version int64  `json:"version"`
}

// GetID returns the record identifier
func (b *Base) GetID() string {
	return b.ID
}

// SetID sets the record identifier
func (b *Base) SetID(id string) {
	b.ID = id
}

// GetVersion returns the record version
func (b *Base) GetVersion() int64 {
	return b.Version
}

// SetVersion sets the record version
func (b *Base) SetVersion(v int64) {
	b.Version = v
}

// Address is a plain postal address embedded in several records
type Address struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	State   string `json:"state"`
}
