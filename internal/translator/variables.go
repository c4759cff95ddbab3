package translator

import "github.com/graang/graang/internal/model"

// transformVariables converts Datadog template variables into Grafana
// dashboard variables. The mapping is 1:1 and order-preserving: every
// variable becomes a custom variable whose query carries the filter
// prefix and whose current selection is the source default.
func transformVariables(vars []model.TemplateVariable, datasource string) model.Templating {
	list := make([]model.TemplateVar, 0, len(vars))

	for _, v := range vars {
		tv := model.TemplateVar{
			Name:       v.Name,
			Type:       "custom",
			Datasource: &model.DatasourceRef{Type: datasource, UID: datasource},
			Current:    model.CurrentValue{Value: v.Default, Text: v.Default},
			Options:    make([]model.VarOption, 0, len(v.Values)),
			Query:      v.Prefix,
		}
		for _, val := range v.Values {
			tv.Options = append(tv.Options, model.VarOption{Text: val, Value: val})
		}
		list = append(list, tv)
	}

	return model.Templating{List: list}
}
