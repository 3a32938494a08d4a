package csvrows_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/csvrows"
)

func TestRead_ConBOMYLineasVacias(t *testing.T) {
	data := "\ufeffcategory_name,item_name,quantity\nWater,Bottle,6\n\n,,\nDry Rations,\"Rice, red\",3\n"

	sheet, err := csvrows.Read(strings.NewReader(data), csvrows.Options{})
	require.NoError(t, err)
	require.Len(t, sheet.Records, 2)
	assert.Equal(t, map[string]string{"category_name": "Water", "item_name": "Bottle", "quantity": "6"}, sheet.Records[0])
	assert.Equal(t, "Rice, red", sheet.Records[1]["item_name"])
	assert.Equal(t, []int{1, 4}, sheet.Rows, "las líneas vacías cuentan para la numeración")
}

func TestRead_FilasIrregulares(t *testing.T) {
	data := "category_name,item_name,quantity,reason\nWater,Bottle\nFood,Biscuits,2,ok,extra\n"

	sheet, err := csvrows.Read(strings.NewReader(data), csvrows.Options{})
	require.NoError(t, err)
	require.Len(t, sheet.Records, 2)
	_, ok := sheet.Records[0]["quantity"]
	assert.False(t, ok)
	assert.Equal(t, "ok", sheet.Records[1]["reason"])
	assert.Equal(t, []int{1, 2}, sheet.Rows)
}

func TestRead_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("category_name,item_name,quantity\nBebidas,Café molido,4\n")
	require.NoError(t, err)

	sheet, err := csvrows.Read(bytes.NewReader([]byte(raw)), csvrows.Options{Charset: "latin1"})
	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "Café molido", sheet.Records[0]["item_name"])
}

func TestRead_Errores(t *testing.T) {
	_, err := csvrows.Read(strings.NewReader(""), csvrows.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = csvrows.Read(strings.NewReader("category_name,item_name,quantity\n"), csvrows.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = csvrows.Read(strings.NewReader("a\n1\n"), csvrows.Options{Charset: "ebcdic"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = csvrows.Read(strings.NewReader("a\n1\n2\n3\n"), csvrows.Options{MaxRows: 2})
	assert.ErrorIs(t, err, csvrows.ErrTooManyRows)
}
