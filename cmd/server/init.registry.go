package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinhanhkiet510/doanchuyennganh/config"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName, db); err != nil {
		return err
	}

	colNames := []string{
		global.MongoDB_ColNames.Products,
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.Customers,
		global.MongoDB_ColNames.Checkouts,
		global.MongoDB_ColNames.Orders,
		global.MongoDB_ColNames.OrderItems,
		global.MongoDB_ColNames.Messages,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
