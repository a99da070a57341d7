package domain

type Profile struct {
	DisplayName string `json:"name"`
	Handle      string `json:"handle"`
	Avatar      string `json:"avatar"`
	JoinLabel   string `json:"joined"`
	ThemeColor  string `json:"themeColor"`
}

func (p Profile) Author() Author {
	return Author{Handle: p.Handle, Name: p.DisplayName, Avatar: p.Avatar}
}

// Transaction is appended once a value transfer is confirmed. Value is wei
// in base 10.
type Transaction struct {
	Hash      string `json:"hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	ValueWei  string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// Preferences are everything persisted under one account's namespace.
type Preferences struct {
	Address      string
	Profile      Profile
	Bookmarks    map[int64]bool
	Likes        map[int64]bool
	Transactions []Transaction
}
