package controllers

var (
	Articles   = Resource{Singular: "article", Plural: "articles", Title: "Article"}
	Categories = Resource{Singular: "category", Plural: "categories", Title: "Category"}
	Courses    = Resource{Singular: "course", Plural: "courses", Title: "Course"}
	Users      = Resource{Singular: "user", Plural: "users", Title: "User"}
)
