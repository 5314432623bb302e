package domain

// Label is an entity category tag.
type Label string

// The fixed category vocabulary, in declaration order.
const (
	LabelType      Label = "TYPE"
	LabelPrice     Label = "PRICE"
	LabelMaterial  Label = "MATERIAL"
	LabelBoardgame Label = "BOARDGAME"
)

// Categories returns the closed label set in declaration order.
// Annotations built from user input always follow this order.
func Categories() []Label {
	return []Label{LabelType, LabelPrice, LabelMaterial, LabelBoardgame}
}

// IsValid returns true if the label belongs to the fixed vocabulary.
func (l Label) IsValid() bool {
	switch l {
	case LabelType, LabelPrice, LabelMaterial, LabelBoardgame:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Label) String() string {
	return string(l)
}

// Prompt returns the text shown when asking for a value of this category.
func (l Label) Prompt() string {
	switch l {
	case LabelType:
		return "Type"
	case LabelPrice:
		return "Price"
	case LabelMaterial:
		return "Material"
	case LabelBoardgame:
		return "Boardgame"
	default:
		return string(l)
	}
}

// CategoryValues holds one user-supplied value per label.
// A missing or empty value means the category is absent from the sample.
type CategoryValues map[Label]string

// Get returns the value for a label, or an empty string.
func (v CategoryValues) Get(l Label) string {
	if v == nil {
		return ""
	}
	return v[l]
}
