package domain

// User mirrors the users table. Hash maps the password column and stays inside
// the repos/services layers; it has no json tag and is never serialized.
type User struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Age   int    `db:"age"`
	Email string `db:"email"`
	Hash  string `db:"password"`
}

// CreateUserInput is the write-intent for POST /users. Password is plaintext
// here and only here; the repository hashes it before anything is persisted.
type CreateUserInput struct {
	Name     string `json:"name" form:"name" validate:"required,min=4"`
	Age      int    `json:"age" form:"age" validate:"required,gte=10,lte=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	// bcrypt rejects inputs over 72 bytes, so the cap is enforced up front
	Password string `json:"password" form:"password" validate:"required,min=4,max=72"`
}

// UpdateUserInput is the write-intent for PATCH /users/:id. Nil means "leave
// unchanged"; the same constraints as CreateUserInput apply to present fields.
type UpdateUserInput struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,min=4"`
	Age      *int    `json:"age" form:"age" validate:"omitempty,gte=10,lte=100"`
	Password *string `json:"password" form:"password" validate:"omitempty,min=4,max=72"`
}

// Empty reports whether no field is set.
func (in UpdateUserInput) Empty() bool {
	return in.Name == nil && in.Age == nil && in.Password == nil
}

// UserView is the read projection returned by every endpoint. It has no hash
// field at all, so the password hash cannot leak through it.
type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Age: u.Age, Email: u.Email}
}

func Views(users []User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return views
}
