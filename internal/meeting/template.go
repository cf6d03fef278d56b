package meeting

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is returned by ApplyTemplate for names not in Templates
var ErrUnknownTemplate = errors.New("unknown template")

// Template is a named preset for duration, description and priority
type Template struct {
	Name        string
	Label       string
	Duration    int
	Description string
	Priority    Priority
}

// Templates are the fixed presets, in display order
var Templates = []Template{
	{Name: "quick-sync", Label: "Quick Sync", Duration: 15, Description: "Brief alignment meeting", Priority: PriorityLow},
	{Name: "team-planning", Label: "Team Planning", Duration: 60, Description: "Sprint planning and task review", Priority: PriorityMedium},
	{Name: "client-presentation", Label: "Client Presentation", Duration: 45, Description: "Product demo and client feedback", Priority: PriorityHigh},
}

// FindTemplate looks a template up by name or display label
func FindTemplate(name string) (Template, bool) {
	for _, t := range Templates {
		if t.Name == name || t.Label == name {
			return t, true
		}
	}
	return Template{}, false
}

// ApplyTemplate overwrites duration, description and priority from the named
// preset. Other fields are left as they are and nothing is validated.
func (d *Draft) ApplyTemplate(name string) error {
	t, ok := FindTemplate(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	d.Duration = t.Duration
	d.Description = t.Description
	d.Priority = t.Priority
	return nil
}
