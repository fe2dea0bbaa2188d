// Command token issues a bearer token for a ledger principal, signed with the
// server's JWT_SECRET_KEY.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/models"
)

func main() {
	principal := flag.String("principal", "", "identity the token proves")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.issuer", "JWT_ISSUER")
	_ = viper.ReadInConfig()

	if *principal == "" {
		fmt.Fprintln(os.Stderr, "usage: token -principal <id> [-ttl 24h]")
		os.Exit(2)
	}

	authorizer := auth.NewJWTAuthorizer(viper.GetString("jwt.secret_key"), viper.GetString("jwt.issuer"))
	token, err := authorizer.Issue(models.Principal(*principal), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
