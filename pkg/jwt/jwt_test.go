package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "company-1", "stock-ledger", 30)
	require.NoError(t, err)

	userID, companyID, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "company-1", companyID)
}

func TestParse_Rechazos(t *testing.T) {
	valid, err := pkgjwt.Generate(secret, "user-1", "company-1", "stock-ledger", 30)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(secret, "user-1", "company-1", "stock-ledger", -1)
	require.NoError(t, err)
	noCompany, err := pkgjwt.Generate(secret, "user-1", "", "stock-ledger", 30)
	require.NoError(t, err)

	cases := map[string]struct {
		secret string
		token  string
	}{
		"otro secreto":  {secret: "otro", token: valid},
		"expirado":      {secret: secret, token: expired},
		"sin empresa":   {secret: secret, token: noCompany},
		"basura":        {secret: secret, token: "no.es.jwt"},
		"secreto vacío": {secret: "", token: valid},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := pkgjwt.Parse(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "company-1", "stock-ledger", 30)
	assert.Error(t, err)
}
