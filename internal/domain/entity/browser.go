package entity

// ConsentResult distinguishes "no cookie banner" from "banner found but the
// click failed", so callers never have to guess.
type ConsentResult string

const (
	ConsentAccepted ConsentResult = "accepted"
	ConsentAbsent   ConsentResult = "absent"
	ConsentFailed   ConsentResult = "failed"
)

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
