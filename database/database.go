package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db          *gorm.DB
	projectRepo *ProjectRepo
	voteRepo    *VoteRepo
	commentRepo *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		projectRepo: NewProjectRepo(db),
		voteRepo:    NewVoteRepo(db),
		commentRepo: NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) VoteRepo() *VoteRepo {
	return d.voteRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

// GetDB returns the underlying database connection
func (d Database) GetDB() *gorm.DB {
	return d.db
}
