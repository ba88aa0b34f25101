package domain

// School identifies the university a module or major belongs to.
type School string

const (
	SchoolNUS School = "NUS"
	SchoolNTU School = "NTU"
	SchoolSMU School = "SMU"
)

// Schools lists the supported universities in lookup order.
var Schools = []School{SchoolNUS, SchoolNTU, SchoolSMU}

// Module is the canonical representation of a university module inside this service.
// Catalogue files, stores and exports all map into and out of this model.
type Module struct {
	ID          int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Code        string `json:"modulecode" yaml:"modulecode"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Institution School `json:"institution,omitempty" yaml:"institution,omitempty"`
}
