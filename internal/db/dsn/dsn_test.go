package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HRPortal/HRPortal/internal/config"
)

func TestCreate(t *testing.T) {
	base := config.DB{Host: "db", Port: 3306, User: "hr", Password: "pw", Name: "hrportal"}

	tests := []struct {
		name   string
		modify func(c *config.DB)
		want   string
	}{
		{
			name:   "mysql adds parseTime",
			modify: func(c *config.DB) { c.GormEngine = "mysql" },
			want:   "hr:pw@tcp(db:3306)/hrportal?parseTime=true",
		},
		{
			name: "mysql keeps extras",
			modify: func(c *config.DB) {
				c.Extras = "charset=utf8mb4&parseTime=True&loc=Local"
			},
			want: "hr:pw@tcp(db:3306)/hrportal?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "mysql appends parseTime to extras",
			modify: func(c *config.DB) {
				c.Extras = "charset=utf8mb4"
			},
			want: "hr:pw@tcp(db:3306)/hrportal?charset=utf8mb4&parseTime=true",
		},
		{
			name: "postgres",
			modify: func(c *config.DB) {
				c.GormEngine = "postgres"
				c.Port = 5432
				c.Extras = "sslmode=disable"
			},
			want: "host=db port=5432 user=hr password=pw dbname=hrportal sslmode=disable",
		},
		{
			name: "sqlite uses the name as path",
			modify: func(c *config.DB) {
				c.GormEngine = "sqlite"
				c.Name = "file:hr.db?_pragma=foreign_keys(1)"
			},
			want: "file:hr.db?_pragma=foreign_keys(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.modify(&c)
			assert.Equal(t, tt.want, Create(&c))
		})
	}
}
