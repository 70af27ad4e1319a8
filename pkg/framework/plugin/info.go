package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// classNamespace seeds name-based class IDs so the same plugin ID always
// maps to the same UID.
var classNamespace = uuid.MustParse("6f1c4b0e-3d2a-5e8f-9b17-2c4d8a6e0f31")

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	URL      string
	Email    string
	Category string // Plugin category (e.g., "Fx", "Instrument")

	// ClassID overrides the generated UID when non-zero
	ClassID [16]byte

	SubCategories []string
}

// UID returns the 16-byte class ID for VST3
func (i Info) UID() [16]byte {
	if i.ClassID != ([16]byte{}) {
		return i.ClassID
	}
	return uuid.NewSHA1(classNamespace, []byte(i.ID))
}

// SubCategoryString joins the subcategories the way VST3 expects them
func (i Info) SubCategoryString() string {
	return strings.Join(i.SubCategories, "|")
}

// Validate checks that the metadata is complete enough to register
func (i Info) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("plugin ID is required"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("plugin name is required"))
	}
	if i.Version == "" {
		errs = append(errs, errors.New("plugin version is required"))
	}
	for _, sub := range i.SubCategories {
		if strings.Contains(sub, "|") {
			errs = append(errs, fmt.Errorf("subcategory %q contains a separator", sub))
		}
	}
	return errors.Join(errs...)
}
