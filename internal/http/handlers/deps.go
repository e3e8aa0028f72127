package handlers

import (
	"usersvc/internal/repos"
	"usersvc/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	UserHandler *UserHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		UserHandler: &UserHandler{Users: userSvc},
	}
}
