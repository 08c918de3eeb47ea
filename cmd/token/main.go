// Comando token emite um JWT sem passar pelo login, útil para integrações
// e para o primeiro acesso antes de existir um operador cadastrado.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"gotire/config"
	"gotire/internal/domain"
	"gotire/internal/pkg/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado. Usando apenas o ambiente do sistema.")
	}

	var userID, role string
	flag.StringVar(&userID, "user", "", "identificador do operador (gravado como movedBy/registeredBy)")
	flag.StringVar(&role, "role", string(domain.RoleOperator), "papel: operator ou admin")
	flag.Parse()

	if userID == "" {
		log.Fatalf("informe -user")
	}
	if !domain.UserRole(role).Valid() {
		log.Fatalf("papel inválido: %q (operator ou admin)", role)
	}

	cfg := config.LoadConfig()
	tok, err := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry).GenerateToken(userID, role)
	if err != nil {
		log.Fatalf("falha ao gerar token: %v", err)
	}
	fmt.Fprintln(os.Stdout, tok)
}
