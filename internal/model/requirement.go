package model

import "time"

const (
	RequirementTableName = "requirements"
	TagTableName         = "tags"
	CommentTableName     = "comments"
	AttachmentTableName  = "attachments"
)

// Requirement 需求
type Requirement struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100;index" json:"category"`
	Priority    string `gorm:"size:10;not null;index" json:"priority"`
	Status      string `gorm:"size:20;not null;index" json:"status"`
	Version     string `gorm:"size:20" json:"version"`
	CreatedByID int64  `gorm:"not null;index" json:"created_by_id"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Tags      []Tag `gorm:"many2many:requirement_tags;" json:"tags,omitempty"`
	// 单向关联: A 关联 B 不代表 B 关联 A
	RelatedRequirements []Requirement `gorm:"many2many:requirement_relations;joinForeignKey:RequirementID;joinReferences:RelatedRequirementID" json:"related_requirements,omitempty"`
	TestCases           []TestCase    `gorm:"many2many:test_case_requirements;" json:"test_cases,omitempty"`
	Comments            []Comment     `gorm:"foreignKey:RequirementID" json:"comments,omitempty"`
	Attachments         []Attachment  `gorm:"foreignKey:RequirementID" json:"attachments,omitempty"`
}

func (Requirement) TableName() string {
	return RequirementTableName
}

// Tag 标签, 名称全局唯一
type Tag struct {
	BaseModel
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:200" json:"description"`

	Requirements []Requirement `gorm:"many2many:requirement_tags;" json:"requirements,omitempty"`
}

func (Tag) TableName() string {
	return TagTableName
}

// Comment 需求评论
type Comment struct {
	BaseModel
	Text          string `gorm:"type:text;not null" json:"text"`
	AuthorID      int64  `gorm:"not null;index" json:"author_id"`
	RequirementID int64  `gorm:"not null;index" json:"requirement_id"`

	Author      *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Requirement *Requirement `gorm:"foreignKey:RequirementID" json:"requirement,omitempty"`
}

func (Comment) TableName() string {
	return CommentTableName
}

// Attachment 附件元数据, 归属需求或测试结果二者之一; 文件内容不在本服务存储
type Attachment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName      string    `gorm:"size:255" json:"file_name"`
	Size          int64     `gorm:"not null" json:"size"`
	Type          string    `gorm:"size:127;not null" json:"type"`
	RequirementID *int64    `gorm:"index" json:"requirement_id,omitempty"`
	TestResultID  *int64    `gorm:"index" json:"test_result_id,omitempty"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Requirement *Requirement `gorm:"foreignKey:RequirementID" json:"requirement,omitempty"`
	TestResult  *TestResult  `gorm:"foreignKey:TestResultID" json:"test_result,omitempty"`
}

func (Attachment) TableName() string {
	return AttachmentTableName
}
