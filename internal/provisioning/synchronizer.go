package provisioning

import (
	"context"

	"salestrack/internal/core/apperror"
	"salestrack/internal/metadata"
	"salestrack/pkg/logger"
)

// EnsureList makes the remote site hold def: the list exists and every declared
// column exists. The list id is recorded in ids whether the list was found or created.
//
// Columns are processed in declaration order. The first failure aborts the list;
// the returned report then describes the columns handled before it.
func EnsureList(ctx context.Context, store ListStore, siteID string, def metadata.ListDef, ids NameToID) (ListReport, error) {
	report := ListReport{List: def.DisplayName}
	log := logger.FromContext(ctx).With("list", def.DisplayName)

	list, err := store.FindList(ctx, siteID, def.DisplayName)
	if err != nil {
		return report, remoteError("find list", err)
	}
	if list == nil {
		list, err = store.CreateList(ctx, siteID, def.DisplayName, def.Description)
		if err != nil {
			if apperror.IsCode(err, apperror.CodeAuth) {
				return report, err
			}
			return report, apperror.NewListCreation(def.DisplayName, err)
		}
		report.ListCreated = true
		log.Infow("list created", "list_id", list.ID)
	}
	report.ListID = list.ID
	ids[def.DisplayName] = list.ID

	for _, colDef := range def.Columns {
		existing, err := store.FindColumn(ctx, siteID, list.ID, colDef.Name)
		if err != nil {
			return report, remoteError("find column", err)
		}

		if existing != nil {
			report.ColumnsSkipped = append(report.ColumnsSkipped, colDef.Name)
			if actual := existing.Kind(); actual != string(colDef.Type) {
				if actual == "" {
					actual = "other"
				}
				report.Mismatches = append(report.Mismatches, Mismatch{
					Column:   colDef.Name,
					Declared: string(colDef.Type),
					Actual:   actual,
				})
				log.Warnw("existing column type differs from declaration, leaving it unchanged",
					"column", colDef.Name,
					"declared", colDef.Type,
					"actual", actual,
				)
			}
			continue
		}

		payload, err := BuildColumn(def.DisplayName, colDef, ids)
		if err != nil {
			return report, err
		}

		if _, err := store.CreateColumn(ctx, siteID, list.ID, payload); err != nil {
			if apperror.IsCode(err, apperror.CodeAuth) {
				return report, err
			}
			return report, apperror.NewColumnCreation(def.DisplayName, colDef.Name, err)
		}
		report.ColumnsCreated = append(report.ColumnsCreated, colDef.Name)
		log.Debugw("column created", "column", colDef.Name, "type", colDef.Type)
	}

	return report, nil
}

func remoteError(op string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewRemote(op, err)
}
