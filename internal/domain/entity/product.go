package entity

// Product is one shopping search result. Link is empty when the upstream
// item carried neither a store link nor a product page link.
type Product struct {
	Thumbnail string
	Title     string
	Price     string
	Source    string
	Link      string
}
