package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes chaudes du parcours de connexion
	stmtGetUserByEmail *gocql.Query
	stmtGetUserByID    *gocql.Query
	stmtInsertUser     *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		users, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements users: %v", err)
			return
		}

		stmtGetUserByEmail = users.Query("SELECT user_id FROM users_by_email WHERE email = ?")
		stmtGetUserByID = users.Query(`SELECT email, password, name, role, provider, provider_id
			FROM users WHERE user_id = ?`)
		stmtInsertUser = users.Query(`INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return stmtGetUserByEmail
}

func GetPreparedGetUserByID() *gocql.Query {
	return stmtGetUserByID
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtInsertUser
}
