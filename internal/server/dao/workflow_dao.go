package dao

import (
	"context"
	"errors"
	"weft/internal/common"
	"weft/internal/server/model"

	"gorm.io/gorm"
)

type WorkflowDao interface {
	// create workflow version
	Create(ctx context.Context, workflow *model.Workflow) error
	// get newest version by name
	GetNewestVersionByName(ctx context.Context, name string) (*model.Workflow, error)
	GetByID(ctx context.Context, id uint) (*model.Workflow, error)
	GetAllWorkflows(ctx context.Context) ([]*model.Workflow, error)
	// newest version of every workflow name
	GetNewestVersions(ctx context.Context) ([]*model.Workflow, error)
}

type workflowDAO struct {
}

func NewWorkflowDao() WorkflowDao {
	return &workflowDAO{}
}

func (d *workflowDAO) Create(ctx context.Context, workflow *model.Workflow) error {
	return db.WithContext(ctx).Create(workflow).Error
}

func (d *workflowDAO) GetNewestVersionByName(ctx context.Context, name string) (*model.Workflow, error) {
	var workflow model.Workflow
	err := db.WithContext(ctx).Where("name = ?", name).Order("version DESC").Take(&workflow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewErrNo(common.WorkflowNotExists)
		}
		return nil, err
	}
	return &workflow, nil
}

func (d *workflowDAO) GetByID(ctx context.Context, id uint) (*model.Workflow, error) {
	var workflow model.Workflow
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&workflow).Error; err != nil {
		return nil, err
	}
	return &workflow, nil
}

func (d *workflowDAO) GetAllWorkflows(ctx context.Context) ([]*model.Workflow, error) {
	var workflows []*model.Workflow
	if err := db.WithContext(ctx).Find(&workflows).Error; err != nil {
		return nil, err
	}
	return workflows, nil
}

func (d *workflowDAO) GetNewestVersions(ctx context.Context) ([]*model.Workflow, error) {
	workflows, err := d.GetAllWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	newest := make(map[string]*model.Workflow)
	for _, wf := range workflows {
		if cur, ok := newest[wf.Name]; !ok || wf.Version > cur.Version {
			newest[wf.Name] = wf
		}
	}
	result := make([]*model.Workflow, 0, len(newest))
	for _, wf := range workflows {
		if newest[wf.Name] == wf {
			result = append(result, wf)
		}
	}
	return result, nil
}
