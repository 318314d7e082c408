// Package seed holds the initial catalog and the default users, used to
// populate an empty database at first boot and as the offline-mode dataset
// when no database is configured.
package seed

import (
	"strings"

	"autotrack-pos/internal/model"

	"github.com/shopspring/decimal"
)

var ServiceCategories = []string{
	"General Services",
	"Repair Services",
	"Tyre & Wheel Services",
	"Electrical & Electronic Services",
	"Cleaning & Detailing Services",
	"Custom & Modification Services",
	"Safety & Comfort Services",
	"Diagnostic & Performance Services",
}

var ExpenseCategories = []string{
	"Rent",
	"Utilities (Electric/Water)",
	"Salaries & Wages",
	"Spare Parts Purchase",
	"Tools & Equipment",
	"Marketing & Ads",
	"Tea & Refreshments",
	"Transportation",
	"Miscellaneous",
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Products returns the starter product catalog.
func Products() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Synthetic Motor Oil 5W-30", SKU: "OIL-SYN-530", Category: "Fluids", BuyingPrice: price("15.00"), SellingPrice: price("35.00"), Stock: 42},
		{ID: "p2", Name: "Ceramic Brake Pads (Front)", SKU: "BRK-PAD-F-01", Category: "Brakes", BuyingPrice: price("25.00"), SellingPrice: price("65.00"), Stock: 12},
		{ID: "p3", Name: "Oil Filter Premium", SKU: "FLT-OIL-PREM", Category: "Filters", BuyingPrice: price("4.50"), SellingPrice: price("12.00"), Stock: 8},
		{ID: "p4", Name: "All-Season Tire 205/55R16", SKU: "TIRE-AS-16", Category: "Tires", BuyingPrice: price("60.00"), SellingPrice: price("110.00"), Stock: 20},
	}
}

func svc(name, category string) model.Service {
	id := "s_" + strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return model.Service{ID: id, Name: name, Category: category}
}

// Services returns the starter service catalog.
func Services() []model.Service {
	return []model.Service{
		svc("Oil Change", "General Services"),
		svc("Engine Tune Up", "General Services"),
		svc("Battery Replacement", "General Services"),
		svc("Air Filter Replacement", "General Services"),
		svc("Engine Repair", "Repair Services"),
		svc("Brake Repair", "Repair Services"),
		svc("Clutch Replacement", "Repair Services"),
		svc("Suspension Repair", "Repair Services"),
		svc("Wheel Alignment", "Tyre & Wheel Services"),
		svc("Wheel Balancing", "Tyre & Wheel Services"),
		svc("Tyre Rotation", "Tyre & Wheel Services"),
		svc("Puncture Repair", "Tyre & Wheel Services"),
		svc("Alternator Repair", "Electrical & Electronic Services"),
		svc("Starter Motor Repair", "Electrical & Electronic Services"),
		svc("Wiring Check", "Electrical & Electronic Services"),
		svc("Full Body Wash", "Cleaning & Detailing Services"),
		svc("Interior Detailing", "Cleaning & Detailing Services"),
		svc("Engine Bay Cleaning", "Cleaning & Detailing Services"),
		svc("Body Kit Installation", "Custom & Modification Services"),
		svc("Audio System Installation", "Custom & Modification Services"),
		svc("AC Service", "Safety & Comfort Services"),
		svc("Seat Belt Repair", "Safety & Comfort Services"),
		svc("Computer Diagnostics", "Diagnostic & Performance Services"),
		svc("Emission Test", "Diagnostic & Performance Services"),
	}
}

// Users returns the two default accounts. Passwords are hashed on seed.
func Users() ([]model.User, error) {
	users := []model.User{
		{ID: "u1", Name: "Alice Admin", Role: model.RoleAdmin, Email: "admin@autotrack.com"},
		{ID: "u2", Name: "Bob Manager", Role: model.RoleManager, Email: "manager@autotrack.com"},
	}
	for i := range users {
		if err := users[i].SetPassword("1234"); err != nil {
			return nil, err
		}
	}
	return users, nil
}
