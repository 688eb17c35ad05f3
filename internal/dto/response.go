package dto

// Result is the {success, message} envelope returned by mutating routes.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorDetail struct {
	Detail string `json:"detail"`
}

// IngestError and IngestAck shape the public ingestion route, which keeps the
// bridge's error/message vocabulary.
type IngestError struct {
	Error string `json:"error"`
}

type IngestAck struct {
	Message string `json:"message"`
}
