package model

type Category struct {
	ID   string `db:"id"`
	Slug string `db:"slug"`
	Name string `db:"name"`
}
