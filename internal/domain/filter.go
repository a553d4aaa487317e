package domain

// DocumentFilter narrows register listings. Zero values mean "no filter".
type DocumentFilter struct {
	Department string
	DocType    string
	Status     DocumentStatus
	Archived   *bool
	Limit      int
	Offset     int
}

// DeletedFilter narrows deleted-record listings.
type DeletedFilter struct {
	Department string
	DeletedBy  string
	Limit      int
	Offset     int
}

// ArchiveFilter narrows archive listings.
type ArchiveFilter struct {
	SopNumber  string
	Department string
	Limit      int
	Offset     int
}
