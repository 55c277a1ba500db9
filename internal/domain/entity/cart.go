package entity

// CartSelector is one entry of the add-to-cart lookup table. Query is a CSS
// selector; when Match is set it is a JS regex applied to the element text,
// which narrows Query to elements with that label.
type CartSelector struct {
	Query       string
	Match       string
	Description string
}

// CartClick reports which table entry matched. Position is the index in the
// selector list that was tried.
type CartClick struct {
	Selector CartSelector
	Position int
}

// DefaultCartSelectors is ordered from most site-specific to most generic.
// E-commerce sites have no standard add-to-cart markup, so a miss on every
// entry is a normal outcome, not a bug.
var DefaultCartSelectors = []CartSelector{
	{Query: "#add-to-cart-button", Description: "Amazon buy box"},
	{Query: "#add-to-cart-button-ubb", Description: "Amazon buy box (ubb layout)"},
	{Query: "[data-automation-id='add-to-cart']", Description: "Walmart product page"},
	{Query: "button[name='add']", Description: "Shopify product form button"},
	{Query: "button", Match: "/Add to Cart/i", Description: "button labeled Add to Cart"},
	{Query: "button", Match: "/Add to Bag/i", Description: "button labeled Add to Bag"},
	{Query: "form[action*='/cart/add'] button", Description: "cart form submit"},
	{Query: ".add-to-cart", Description: "generic add-to-cart class"},
}
