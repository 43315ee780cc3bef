package web

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Sheet Filter{{if .Source}} - {{.Source}}{{end}}</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; margin: 20px; color: #2c3e50; }
        form { margin-bottom: 12px; }
        label { margin-right: 8px; }
        .error { background: #fdecea; color: #d32f2f; padding: 8px 12px; border-radius: 4px; margin-bottom: 12px; }
        .meta { color: #6c757d; margin-bottom: 8px; }
        table { border-collapse: collapse; }
        th, td { border: 1px solid #d4d4d4; padding: 4px 8px; }
        th { background: #e0e0e0; }
        tr.highlighted td { background: #fff59d; }
    </style>
</head>
<body>
<h1>Sheet Filter</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<div class="meta">{{if .Loaded}}{{.Source}}: showing {{.Shown}} of {{.Total}} rows{{else}}No sheet loaded{{end}}</div>

<form method="post" action="/filter">
    <label>Primary column <input id="primary-column" name="primary" value="{{.Form.Primary}}" required></label>
    <label>Rows <input id="row-from" name="row_from" value="{{.Form.RowFrom}}" size="4"> to <input id="row-to" name="row_to" value="{{.Form.RowTo}}" size="4"></label>
    <label>Columns <input id="col-from" name="col_from" value="{{.Form.ColFrom}}" size="4"> to <input id="col-to" name="col_to" value="{{.Form.ColTo}}" size="4"></label>
    <label>Operation
        <select id="operation" name="mode">
            <option value="null"{{if eq .Form.Mode "null"}} selected{{end}}>is null</option>
            <option value="not-null"{{if eq .Form.Mode "not-null"}} selected{{end}}>is not null</option>
        </select>
    </label>
    <button id="apply-operation" type="submit">Apply</button>
</form>

<form method="post" action="/reset"><button type="submit">Show all rows</button></form>
{{if .CanReload}}<form method="post" action="/reload"><button type="submit">Reload source</button></form>{{end}}

<form method="get" action="/export">
    <label>File name <input id="filename" name="filename" value="{{.FileName}}"></label>
    <select id="file-format" name="format">
        {{range .Formats}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <button id="download-button" type="submit">Download</button>
</form>

<div id="sheet-content">
{{.Table}}
</div>
</body>
</html>
`
