package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

func TestRosterSheet_CabeceraYFilas(t *testing.T) {
	list := []entity.Resident{
		{ID: "r1", FirstName: "Ana", LastName: "Cruz", Birthdate: "2000-05-10", Age: 25,
			Gender: entity.GenderFemale, CivilStatus: entity.CivilSingle, Address: "Barangay 1, Purok 3"},
		{ID: "r2", FirstName: "Luis", LastName: "Reyes", Birthdate: "1950-01-01", Age: 76,
			Gender: entity.GenderMale, CivilStatus: entity.CivilWidowed, Address: "Barangay 2"},
	}

	out, err := NewRenderer().RosterSheet(context.Background(), list, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "25", rows[1][6])
	assert.Equal(t, "Barangay 1", rows[1][9])
	assert.Equal(t, "Barangay 2", rows[2][9])
}

func TestRosterSheet_Vacia(t *testing.T) {
	out, err := NewRenderer().RosterSheet(context.Background(), nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
}
