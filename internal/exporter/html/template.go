package html

// ReportTemplate wraps a rendered table in a printable page
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Filtered Data - {{.GeneratedAt}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 24px 20px;
            margin-bottom: 20px;
            border-radius: 8px;
        }

        .stats {
            font-size: 0.95em;
            opacity: 0.9;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            background: white;
        }

        th, td {
            border: 1px solid #d4d4d4;
            padding: 6px 10px;
            text-align: left;
        }

        th {
            background: #e0e0e0;
        }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>Filtered Data</h1>
        <p class="stats">{{.TotalRows}} rows, {{.TotalCols}} columns. Generated {{.GeneratedAt}}</p>
    </header>
    {{.Table}}
</div>
</body>
</html>
`
