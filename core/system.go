package core

// System stores system information.
type System struct {
	Genesis int64
	Version string
}
