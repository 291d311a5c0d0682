// Package gorm implements the store interfaces on Postgres via GORM.
package gorm
