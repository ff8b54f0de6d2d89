package db

import (
	"testing"

	"wallet_admin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "explicit dsn wins",
			cfg:  config.Config{DBDriver: "mysql", DBDSN: "root@tcp(db)/x", DBHost: "ignored"},
			want: "root@tcp(db)/x",
		},
		{
			name: "mysql",
			cfg:  config.Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "wallet"},
			want: "u:p@tcp(h:3306)/wallet?parseTime=true",
		},
		{
			name: "postgres",
			cfg:  config.Config{DBDriver: "postgres", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "wallet"},
			want: "host=h port=5432 user=u password=p dbname=wallet sslmode=disable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(&tt.cfg))
		})
	}
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: "mysql", DBDSN: "u:p@tcp(h)/x"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(&config.Config{DBDriver: "postgres", DBDSN: "host=h"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.Config{DBDriver: "sqlite"})
	assert.Error(t, err)
}

func TestModels(t *testing.T) {
	assert.Len(t, Models(), 10)
}
