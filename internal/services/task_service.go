package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"slackagent/internal/models"
)

// TaskService wraps create/query/update operations against the Notion task
// database. All record identifiers are owned by Notion.
type TaskService struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewTaskService creates a Notion client for the configured task database.
func NewTaskService(apiKey, databaseID string) *TaskService {
	return &TaskService{
		client:     notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// CreateTask creates a task page with the required title, a fixed "To Do"
// status and the description as a paragraph child block. The assignee
// property is attached only when provided.
func (s *TaskService) CreateTask(ctx context.Context, title, description, assignee string) (*models.Task, error) {
	properties := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: title}},
			},
		},
		"Status": notionapi.SelectProperty{
			Select: notionapi.Option{Name: models.TaskStatusToDo},
		},
	}

	if assignee != "" {
		properties["Assignee"] = notionapi.PeopleProperty{
			People: []notionapi.User{
				{ID: notionapi.UserID(assignee)},
			},
		}
	}

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: properties,
		Children: []notionapi.Block{
			notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeParagraph,
				},
				Paragraph: notionapi.Paragraph{
					RichText: []notionapi.RichText{
						{Text: &notionapi.Text{Content: description}},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("⚠️ [NOTION] Failed to create task %q: %v", title, err)
		return nil, fmt.Errorf("%w: create task: %v", models.ErrUnavailable, err)
	}

	GetMetrics().RecordTaskCreated()
	log.Printf("📝 [NOTION] Created task %q (page %s)", title, page.ID)

	return &models.Task{
		ID:          string(page.ID),
		Title:       title,
		Description: description,
		Status:      models.TaskStatusToDo,
		Assignee:    assignee,
		URL:         page.URL,
	}, nil
}

// GetRecentDocuments queries pages edited within the trailing number of days.
func (s *TaskService) GetRecentDocuments(ctx context.Context, days int) ([]models.Document, error) {
	since := notionapi.Date(time.Now().UTC().AddDate(0, 0, -days))

	resp, err := s.client.Database.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.TimestampFilter{
			Timestamp: notionapi.TimestampLastEdited,
			LastEditedTime: &notionapi.DateFilterCondition{
				OnOrAfter: &since,
			},
		},
	})
	if err != nil {
		log.Printf("⚠️ [NOTION] Failed to query recent documents: %v", err)
		return nil, fmt.Errorf("%w: query recent documents: %v", models.ErrUnavailable, err)
	}

	docs := make([]models.Document, 0, len(resp.Results))
	for _, page := range resp.Results {
		docs = append(docs, models.Document{
			ID:             string(page.ID),
			Title:          pageTitle(page),
			LastEditedTime: page.LastEditedTime,
		})
	}
	return docs, nil
}

// UpdateTaskStatus sets the Status select of an existing task page.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, pageID, status string) (*models.Task, error) {
	page, err := s.client.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			"Status": notionapi.SelectProperty{
				Select: notionapi.Option{Name: status},
			},
		},
	})
	if err != nil {
		log.Printf("⚠️ [NOTION] Failed to update task %s status: %v", pageID, err)
		return nil, fmt.Errorf("%w: update task status: %v", models.ErrUnavailable, err)
	}

	return &models.Task{
		ID:     string(page.ID),
		Title:  pageTitle(*page),
		Status: status,
		URL:    page.URL,
	}, nil
}

// DailyDigestContent renders the recent-document list for the daily digest,
// one "- <title>" line per document under a fixed header.
func (s *TaskService) DailyDigestContent(ctx context.Context) string {
	docs, err := s.GetRecentDocuments(ctx, 1)
	if err != nil {
		return "Unable to fetch Notion updates."
	}

	var b strings.Builder
	b.WriteString("Recent Notion Updates:\n")
	for _, doc := range docs {
		b.WriteString("- " + doc.Title + "\n")
	}
	return b.String()
}

// pageTitle extracts the plain-text title from a page's Name property.
func pageTitle(page notionapi.Page) string {
	prop, ok := page.Properties["Name"].(*notionapi.TitleProperty)
	if !ok || len(prop.Title) == 0 {
		return "Untitled"
	}

	var b strings.Builder
	for _, rt := range prop.Title {
		b.WriteString(rt.PlainText)
	}
	if b.Len() == 0 {
		return "Untitled"
	}
	return b.String()
}
