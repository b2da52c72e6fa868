package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func auditFixture() Entry {
	name := "Nguyen Van An"
	return Entry{
		ID:          "audit-1",
		Actor:       Actor{ID: "user-1", Name: "Tran Thi Binh", Role: "crm_manager"},
		Action:      ActionTransfer,
		Entity:      EntityCustomer,
		EntityName:  &name,
		Description: "Transferred customer to another owner",
		Timestamp:   time.Now(),
		Success:     true,
	}
}

func TestListFilter_Matches(t *testing.T) {
	entry := auditFixture()
	success := true
	failure := false

	tests := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{"empty filter matches everything", ListFilter{}, true},
		{"action match", ListFilter{Action: ActionTransfer}, true},
		{"action mismatch", ListFilter{Action: ActionDelete}, false},
		{"entity match", ListFilter{Entity: EntityCustomer}, true},
		{"entity mismatch", ListFilter{Entity: EntityEmployee}, false},
		{"success match", ListFilter{Success: &success}, true},
		{"success mismatch", ListFilter{Success: &failure}, false},
		{"free text over description", ListFilter{Search: "transferred"}, true},
		{"free text over actor name", ListFilter{Search: "binh"}, true},
		{"free text over entity name", ListFilter{Search: "nguyen"}, true},
		{"free text no hit", ListFilter{Search: "payroll"}, false},
		{
			// Populated fields are conjunctive.
			"all fields AND together",
			ListFilter{Search: "customer", Action: ActionTransfer, Entity: EntityCustomer, Success: &success},
			true,
		},
		{
			"conjunction fails on one mismatch",
			ListFilter{Search: "customer", Action: ActionTransfer, Entity: EntityCustomer, Success: &failure},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(entry))
		})
	}
}
