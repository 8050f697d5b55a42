package models

// SplitGroup is a named group of people sharing expenses, e.g. a trip or a
// shared household. Members are display names, not registered users.
type SplitGroup struct {
	Base
	UserID   string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string         `gorm:"not null" json:"name"`
	Members  []string       `gorm:"serializer:json" json:"members"`
	Expenses []SplitExpense `gorm:"foreignKey:GroupID" json:"expenses"`
}

// SplitExpense is one shared expense inside a split group, attributed to the
// member who paid for it.
type SplitExpense struct {
	Base
	GroupID     string  `gorm:"type:uuid;not null;index" json:"group_id"`
	Description string  `gorm:"not null" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`
	PaidBy      string  `gorm:"not null" json:"paid_by"`
}

// TotalAmount is the derived sum of the group's expense amounts. It is never
// stored as ground truth.
func (g *SplitGroup) TotalAmount() float64 {
	var total float64
	for _, e := range g.Expenses {
		total += e.Amount
	}
	return total
}
