package models

import (
	"blog/db"
)

func Init() {
	err := db.Instance.AutoMigrate(
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
	if err != nil {
		panic(err)
	}
}
