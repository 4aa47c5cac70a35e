package sandbox

// runtimeSource is the capability set installed into every sandbox run: the
// h/Fragment runtime primitives, the style-utility helpers, the icon set,
// and the UI component set. It is the complete allow-list; any identifier
// outside it is a ReferenceError caught at the sandbox boundary.
const runtimeSource = `
var Fragment = '@fragment';

function h(tag, props) {
	var children = [];
	for (var i = 2; i < arguments.length; i++) {
		children.push(arguments[i]);
	}
	if (typeof tag === 'function') {
		var merged = {};
		for (var k in (props || {})) { merged[k] = props[k]; }
		merged.children = children;
		return tag(merged);
	}
	return { tag: tag === Fragment ? '' : tag, props: props || {}, children: children };
}

function cn() {
	var out = [];
	for (var i = 0; i < arguments.length; i++) {
		var a = arguments[i];
		if (!a) continue;
		if (typeof a === 'string') { out.push(a); continue; }
		if (typeof a === 'object') {
			for (var k in a) { if (a[k]) out.push(k); }
		}
	}
	return out.join(' ');
}
var cx = cn;

function Icon(props) {
	var size = props.size || 16;
	return h('span', {
		className: cn('icon', 'icon-' + (props.name || 'circle'), props.className),
		style: { width: size + 'px', height: size + 'px', display: 'inline-block' }
	});
}

var icons = {
	check: function (p) { return Icon(Object.assign({}, p, { name: 'check' })); },
	x: function (p) { return Icon(Object.assign({}, p, { name: 'x' })); },
	chevronRight: function (p) { return Icon(Object.assign({}, p, { name: 'chevron-right' })); },
	star: function (p) { return Icon(Object.assign({}, p, { name: 'star' })); },
	heart: function (p) { return Icon(Object.assign({}, p, { name: 'heart' })); }
};

function Button(props) {
	var variants = {
		primary: 'bg-blue-600 text-white',
		secondary: 'bg-gray-100 text-gray-900',
		outline: 'border border-gray-300 bg-transparent',
		destructive: 'bg-red-500 text-white'
	};
	return h('button', {
		className: cn('px-4 py-2 rounded-md font-medium', variants[props.variant || 'primary'], props.className),
		disabled: props.disabled,
		type: props.type || 'button',
		style: props.style
	}, props.children);
}

function Input(props) {
	return h('input', {
		className: cn('border border-gray-300 rounded-md px-3 py-2', props.className),
		type: props.type || 'text',
		placeholder: props.placeholder,
		value: props.value,
		disabled: props.disabled,
		style: props.style
	});
}

function Label(props) {
	return h('label', { className: cn('text-sm font-medium', props.className), style: props.style }, props.children);
}

function Badge(props) {
	return h('span', {
		className: cn('inline-block rounded-full px-2 py-1 text-xs font-semibold', props.className || 'bg-gray-100 text-gray-900'),
		style: props.style
	}, props.children);
}

function Card(props) {
	return h('div', { className: cn('rounded-lg border border-gray-200 bg-white shadow-sm', props.className), style: props.style }, props.children);
}

function CardHeader(props) {
	return h('div', { className: cn('p-6 pb-2', props.className), style: props.style }, props.children);
}

function CardTitle(props) {
	return h('h3', { className: cn('text-lg font-semibold', props.className), style: props.style }, props.children);
}

function CardContent(props) {
	return h('div', { className: cn('p-6 pt-2', props.className), style: props.style }, props.children);
}

// Object.assign fallback for the icon helpers on older engine configs.
if (typeof Object.assign !== 'function') {
	Object.assign = function (target) {
		for (var i = 1; i < arguments.length; i++) {
			var src = arguments[i];
			if (!src) continue;
			for (var k in src) { target[k] = src[k]; }
		}
		return target;
	};
}
`
