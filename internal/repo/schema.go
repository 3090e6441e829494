package repo

const (
	tableIssuances = "issuances"
)

const (
	colID       = "id"
	colMode     = "mode"
	colVertical = "vertical"
	colClassID  = "class_id"
	colObjectID = "object_id"
	colToken    = "token"
	colWarnings = "warnings"
	colIssuedAt = "issued_at"
)
