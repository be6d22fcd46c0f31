package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, c *Company) error
	Update(ctx context.Context, db *gorm.DB, c *Company) error
	// DeleteCascade removes the company and every row it owns.
	DeleteCascade(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Company, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Company, error)
	List(ctx context.Context, db *gorm.DB) ([]Company, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	InsertDepartment(ctx context.Context, db *gorm.DB, d *Department) error
	UpdateDepartment(ctx context.Context, db *gorm.DB, d *Department) error
	// DeleteDepartment detaches the department's usage records before removing it.
	DeleteDepartment(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindDepartmentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Department, error)
	FindDepartmentByName(ctx context.Context, db *gorm.DB, companyID snowflake.ID, name string) (*Department, error)
	ListDepartments(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]Department, error)
}
