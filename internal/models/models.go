package models

// User is a portal account. Admins see the management dashboard and may
// mutate every other entity; regular users only read and update their own
// profile picture.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"` // don't expose hash
	Year         string  `json:"year"`
	Department   string  `json:"department"`
	AmountPaid   float64 `json:"amount_paid"`
	Balance      float64 `json:"balance"`
	ProfilePic   []byte  `json:"-"`
	PicMimeType  string  `json:"pic_mimetype"`
	IsAdmin      bool    `json:"is_admin"`
}

// StoredFile is an uploaded document kept verbatim in the store.
// Immutable once written; replace means delete + re-upload.
type StoredFile struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Filetype string `json:"filetype"` // MIME type as received at upload
	Year     string `json:"year"`
	Data     []byte `json:"-"`
}

// Announcement is a dashboard notice. Ordered by insertion id, never edited.
type Announcement struct {
	ID      int    `json:"id"`
	Header  string `json:"header"`
	Content string `json:"content"`
}
