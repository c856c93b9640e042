package resource

import (
	"fmt"

	"starforge/internal/dice"
)

// OrganicType classifies an organic compound
type OrganicType string

const (
	OrganicCurative       OrganicType = "Curative"
	OrganicJuvenat        OrganicType = "Juvenat Compound"
	OrganicToxin          OrganicType = "Toxin"
	OrganicVividAccessory OrganicType = "Vivid Accessory"
	OrganicExotic         OrganicType = "Exotic Compound"
)

var organicTypeTable = dice.NewTable("Organic Compound", 10,
	dice.B(2, OrganicCurative),
	dice.B(4, OrganicJuvenat),
	dice.B(6, OrganicToxin),
	dice.B(9, OrganicVividAccessory),
	dice.B(10, OrganicExotic),
)

// OrganicCompound is a harvestable organic resource
type OrganicCompound struct {
	Type      OrganicType `json:"type"`
	Abundance int         `json:"abundance"`
}

func (o OrganicCompound) String() string {
	return fmt.Sprintf("%s (%d)", o.Type, o.Abundance)
}

// RollOrganicCompound draws a compound type and its abundance
func RollOrganicCompound(r *dice.Roller) OrganicCompound {
	return OrganicCompound{
		Type:      organicTypeTable.Roll(r),
		Abundance: r.D(100),
	}
}
