package gateway

import "encoding/json"

// Downstream channels. Each is a named queue owned by exactly one
// downstream service.
const (
	UsersService = "users-service"
	BooksService = "books-service"
)

// Command families. Together with a method name they form the sole
// addressing mechanism for downstream operations; renaming either side
// is a breaking change with no migration path.
const (
	UsersCmd      = "users"
	CategoryCmd   = "category"
	BooksCmd      = "books"
	BooksStockCmd = "books-stock"
)

// Envelope addresses a single downstream capability.
type Envelope struct {
	Cmd    string `json:"cmd"`
	Method string `json:"method"`
}

// message is the wire shape written to a downstream channel.
type message struct {
	Cmd     string `json:"cmd"`
	Method  string `json:"method"`
	Payload any    `json:"payload"`
}

// reply is the wire shape read back from the reply channel. Exactly one
// of Data and Error is meaningful.
type reply struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}
