package data

import (
	"log"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func MustMySQL(dsn string) *gorm.DB {
	// TranslateError lets the store detect duplicate-key violations as
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(&types.Application{}, &types.StaffMember{}); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}
	return db
}
