package config

import (
	"log"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDemoData inserts a demo company with employees across every
// salary band. Dev mode only, and only when the directory is empty.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️ Demo data already seeded, skipping")
		return nil
	}

	hashed, err := password.Hash("demo-password")
	if err != nil {
		return err
	}

	company := &models.Company{
		CNPJ:               "12345678000199",
		LegalName:          "Empresa de Tecnologia LTDA",
		RepresentativeName: "João Silva Santos",
		CPF:                "12345678901",
		Email:              "representante@empresa.com.br",
		Password:           hashed,
	}
	if err := db.Create(company).Error; err != nil {
		return err
	}

	// one employee per score policy band
	employees := []struct {
		name   string
		cpf    string
		email  string
		salary int64
	}{
		{"Ana Souza Lima", "98765432100", "ana.souza@email.com", 1500},
		{"Bruno Costa Pereira", "98765432101", "bruno.costa@email.com", 3000},
		{"Carla Mendes Rocha", "98765432102", "carla.mendes@email.com", 5000},
		{"Diego Alves Martins", "98765432103", "diego.alves@email.com", 10000},
		{"Elisa Ferreira Nunes", "98765432104", "elisa.ferreira@email.com", 15000},
	}

	for _, e := range employees {
		employee := &models.Employee{
			FullName:  e.name,
			CPF:       e.cpf,
			Email:     e.email,
			Password:  hashed,
			Salary:    decimal.NewFromInt(e.salary),
			CompanyID: company.ID,
		}
		if err := db.Create(employee).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded demo company with %d employees", len(employees))
	return nil
}
