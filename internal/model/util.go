// Package model contain gorm model for recording data to database
package model

// MigrateAble is array of model instance, use for migrating database
var MigrateAble []interface{}

func init() {
	MigrateAble = append(
		MigrateAble,
		&User{},
		&Company{},
		&Job{},
		&Application{},
		&Contact{},
		&Skill{},
		&Education{},
		&Certification{},
		&Language{},
	)
}
