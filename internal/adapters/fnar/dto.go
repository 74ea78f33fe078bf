package fnar

import (
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

// Wire shapes of the FNAR REST API. Only the fields the pricer reads are decoded.

type buildingDTO struct {
	Ticker        string `json:"Ticker"`
	Name          string `json:"Name"`
	AreaCost      int    `json:"AreaCost"`
	Pioneers      int    `json:"Pioneers"`
	Settlers      int    `json:"Settlers"`
	Technicians   int    `json:"Technicians"`
	Engineers     int    `json:"Engineers"`
	Scientists    int    `json:"Scientists"`
	BuildingCosts []struct {
		CommodityTicker string  `json:"CommodityTicker"`
		Amount          float64 `json:"Amount"`
	} `json:"BuildingCosts"`
}

type amountDTO struct {
	Ticker string  `json:"Ticker"`
	Amount float64 `json:"Amount"`
}

type recipeDTO struct {
	StandardRecipeName string      `json:"StandardRecipeName"`
	BuildingTicker     string      `json:"BuildingTicker"`
	TimeMs             int64       `json:"TimeMs"`
	Inputs             []amountDTO `json:"Inputs"`
	Outputs            []amountDTO `json:"Outputs"`
}

type materialDTO struct {
	MaterialID   string `json:"MaterialId"`
	Ticker       string `json:"Ticker"`
	Name         string `json:"Name"`
	CategoryName string `json:"CategoryName"`
}

type planetDTO struct {
	PlanetNaturalID string `json:"PlanetNaturalId"`
	PlanetName      string `json:"PlanetName"`
	Resources       []struct {
		MaterialID   string  `json:"MaterialId"`
		ResourceType string  `json:"ResourceType"`
		Factor       float64 `json:"Factor"`
	} `json:"Resources"`
	BuildRequirements []struct {
		MaterialTicker string  `json:"MaterialTicker"`
		MaterialAmount float64 `json:"MaterialAmount"`
	} `json:"BuildRequirements"`
}

func (d buildingDTO) toDomain() catalog.Building {
	b := catalog.Building{
		Ticker:   d.Ticker,
		Name:     d.Name,
		AreaCost: d.AreaCost,
	}
	b.Workforce[labor.Pioneer] = d.Pioneers
	b.Workforce[labor.Settler] = d.Settlers
	b.Workforce[labor.Technician] = d.Technicians
	b.Workforce[labor.Engineer] = d.Engineers
	b.Workforce[labor.Scientist] = d.Scientists
	for _, c := range d.BuildingCosts {
		b.BuildCosts = append(b.BuildCosts, catalog.MaterialAmount{Ticker: c.CommodityTicker, Amount: c.Amount})
	}
	return b
}

func amounts(in []amountDTO) []catalog.MaterialAmount {
	out := make([]catalog.MaterialAmount, 0, len(in))
	for _, a := range in {
		out = append(out, catalog.MaterialAmount{Ticker: a.Ticker, Amount: a.Amount})
	}
	return out
}

func (d recipeDTO) toDomain() catalog.Recipe {
	return catalog.Recipe{
		Name:           d.StandardRecipeName,
		BuildingTicker: d.BuildingTicker,
		TimeMs:         d.TimeMs,
		Inputs:         amounts(d.Inputs),
		Outputs:        amounts(d.Outputs),
	}
}

func (d materialDTO) toDomain() catalog.Material {
	return catalog.Material{
		Ticker:   d.Ticker,
		ID:       d.MaterialID,
		Name:     d.Name,
		Category: d.CategoryName,
	}
}

func (d planetDTO) toDomain() catalog.Planet {
	p := catalog.Planet{
		NaturalID: d.PlanetNaturalID,
		Name:      d.PlanetName,
	}
	for _, r := range d.Resources {
		p.Resources = append(p.Resources, catalog.PlanetResource{
			MaterialID: r.MaterialID,
			Type:       catalog.ResourceType(r.ResourceType),
			Factor:     r.Factor,
		})
	}
	for _, req := range d.BuildRequirements {
		p.BuildRequirements = append(p.BuildRequirements, req.MaterialTicker)
	}
	return p
}
